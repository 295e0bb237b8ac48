package entities

import (
	"image/color"
	"testing"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/ecs"
)

func TestNewElement(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewElement(em, ElementSpec{
		Left: 10, Top: 20, Width: 300, Height: 40,
		Fixed:   true,
		Text:    "Shop",
		Opacity: 0.5,
	})

	tf, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		t.Fatal("element should have TransformComponent")
	}
	if tf.Opacity != 0.5 || tf.Scale != 1 {
		t.Errorf("transform = %+v, 期望 opacity 0.5 scale 1", tf)
	}

	layout, ok := ecs.GetComponent[*components.LayoutComponent](em, id)
	if !ok || !layout.Fixed || layout.Width != 300 {
		t.Errorf("layout = %+v", layout)
	}
	label, ok := ecs.GetComponent[*components.LabelComponent](em, id)
	if !ok || label.Text != "Shop" {
		t.Errorf("label = %+v", label)
	}
}

func TestNewAnchorHasNoLabel(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewAnchor(em, 0, 800, 1280, 1600)
	if ecs.HasComponent[*components.LabelComponent](em, id) {
		t.Error("anchor should not be drawn")
	}
	if !ecs.HasComponent[*components.LayoutComponent](em, id) {
		t.Error("anchor needs a layout box")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff8000", color.RGBA{0xff, 0x80, 0x00, 0xff}, false},
		{"#0af", color.RGBA{0x00, 0xaa, 0xff, 0xff}, false},
		{"12ab34", color.RGBA{0x12, 0xab, 0x34, 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}
}

func TestNewCatalogCard(t *testing.T) {
	em := ecs.NewEntityManager()
	p := config.Product{
		ID: "gl-01", Category: "gaming-laptop", Brand: "Aero", Name: "X16",
		Price: "$1,999", OriginalPrice: "$2,299", Tag: "HOT", Accent: "#202830",
		Specs: []string{"RTX 4070"},
	}
	id, err := NewCatalogCard(em, p, 3, 0, 0, 280, 360)
	if err != nil {
		t.Fatalf("NewCatalogCard error: %v", err)
	}

	item, ok := ecs.GetComponent[*components.CatalogItemComponent](em, id)
	if !ok || item.Category != "gaming-laptop" || item.Order != 3 || item.ProductID != "gl-01" {
		t.Errorf("catalog item = %+v", item)
	}
	presence, ok := ecs.GetComponent[*components.PresenceComponent](em, id)
	if !ok || !presence.Displayed {
		t.Error("card should start displayed")
	}
	label, _ := ecs.GetComponent[*components.LabelComponent](em, id)
	if label.Text != "[HOT] Aero X16" {
		t.Errorf("title = %q", label.Text)
	}
	if label.Background != (color.RGBA{0x20, 0x28, 0x30, 0xff}) {
		t.Errorf("background = %v", label.Background)
	}

	p.Accent = "blue"
	if _, err := NewCatalogCard(em, p, 4, 0, 0, 280, 360); err == nil {
		t.Error("bad accent color should fail")
	}
}
