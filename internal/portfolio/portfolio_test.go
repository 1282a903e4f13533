package portfolio

import (
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/pastel-room/internal/engine/tween"
	"github.com/Faultbox/pastel-room/pkg/math"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name      string
		wantName  string
		wantTitle string
	}{
		{"dog", "dog", "Dog"},
		{"desk", "desk", "Desk"},
		{"pencil", DefaultName, "Pastel Room"},
		{"", DefaultName, "Pastel Room"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Lookup(tt.name)
			if c.Name != tt.wantName || c.Title != tt.wantTitle {
				t.Errorf("Lookup(%q) = %q/%q, want %q/%q", tt.name, c.Name, c.Title, tt.wantName, tt.wantTitle)
			}
			if c.HTML == "" || c.Text == "" {
				t.Error("empty rendered content")
			}
		})
	}
}

func TestLookupIsPure(t *testing.T) {
	a, b := Lookup("dog"), Lookup("dog")
	if a != b {
		t.Error("repeated lookups differ")
	}
}

func TestRender(t *testing.T) {
	c := Render("x", []byte("# Hello & bye\n\nSome **bold** text.\n"))
	if c.Title != "Hello & bye" {
		t.Errorf("title = %q", c.Title)
	}
	if !strings.Contains(c.HTML, "<strong>bold</strong>") {
		t.Errorf("HTML missing emphasis: %s", c.HTML)
	}
	if strings.Contains(c.Text, "<") || !strings.Contains(c.Text, "Some bold text.") {
		t.Errorf("text not stripped: %q", c.Text)
	}
	if !strings.Contains(c.Text, "Hello & bye") {
		t.Errorf("entities not unescaped: %q", c.Text)
	}

	if got := Render("fallback", []byte("no heading")).Title; got != "fallback" {
		t.Errorf("title without heading = %q", got)
	}
}

func TestOverlayDogScenario(t *testing.T) {
	o := NewOverlay(nil, nil)
	o.Open("dog", time.Now())

	p := o.Current()
	if p == nil || p.Content.Name != "dog" {
		t.Fatalf("open overlay = %+v, want dog", p)
	}
	if p.Opacity != 1 {
		t.Errorf("opacity without tweens = %v", p.Opacity)
	}

	o.ContentBox = Box{Min: math.Vec2{X: 100, Y: 100}, Max: math.Vec2{X: 300, Y: 300}}
	if !o.ClickAt(math.Vec2{X: 150, Y: 150}) || !o.IsOpen() {
		t.Fatal("click inside the content box closed the overlay")
	}
	if !o.ClickAt(math.Vec2{X: 10, Y: 10}) || o.IsOpen() {
		t.Fatal("backdrop click did not close the overlay")
	}
	if o.ClickAt(math.Vec2{X: 10, Y: 10}) {
		t.Error("closed overlay consumed a click")
	}
}

func TestOverlayReplaces(t *testing.T) {
	o := NewOverlay(nil, nil)
	now := time.Now()
	first := o.Open("dog", now)
	second := o.Open("desk", now)
	if o.Current() != second || o.Current() == first {
		t.Error("second Open did not replace the first panel")
	}
	o.Close()
	o.Close()
	if o.IsOpen() {
		t.Error("overlay still open")
	}
}

func TestOverlayFades(t *testing.T) {
	m := tween.NewManager()
	o := NewOverlay(m, nil)
	now := time.Now()
	p := o.Open("dog", now)

	if p.Opacity != 0 {
		t.Fatalf("initial opacity %v, want 0", p.Opacity)
	}
	m.Update(now.Add(DefaultFade / 2))
	if p.Opacity <= 0 || p.Opacity >= 1 {
		t.Errorf("mid-fade opacity %v", p.Opacity)
	}
	m.Update(now.Add(DefaultFade))
	if p.Opacity != 1 {
		t.Errorf("final opacity %v, want 1", p.Opacity)
	}
}
