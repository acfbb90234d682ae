package markup

import (
	"fmt"
	"html"

	"github.com/pagesmith/pagesmith/pkg/canvas"
)

// templateFor maps a component type to its markup fragment. The switch
// is total over the catalog's closed type set; anything else falls back
// to a generic wrapper around the label. Adding a catalog entry without a
// case here is caught by TestTemplatesCoverCatalog.
func templateFor(c canvas.PlacedComponent) string {
	label := html.EscapeString(c.Label)

	switch c.Type {
	case canvas.TypeHeading:
		return fmt.Sprintf(`<h1 class="site-title">%s</h1>`, label)
	case canvas.TypeNavigation:
		return `<nav class="site-nav"><ul><li><a href="#">Home</a></li><li><a href="#">About</a></li><li><a href="#">Contact</a></li></ul></nav>`
	case canvas.TypeLogo:
		return fmt.Sprintf(`<div class="logo"><img src="logo.png" alt="%s"></div>`, label)
	case canvas.TypeButton:
		return fmt.Sprintf(`<button class="btn" type="button">%s</button>`, label)
	case canvas.TypeParagraph:
		return fmt.Sprintf(`<p class="copy">%s</p>`, label)
	case canvas.TypeImage:
		return fmt.Sprintf(`<figure class="media"><img src="placeholder.png" alt="%s"></figure>`, label)
	case canvas.TypeForm:
		return `<form class="contact-form"><label>Email <input type="email" name="email"></label><button type="submit">Send</button></form>`
	case canvas.TypeCopyright:
		return fmt.Sprintf(`<p class="copyright">&copy; %s</p>`, label)
	case canvas.TypeSocial:
		return `<ul class="social"><li><a href="#">Twitter</a></li><li><a href="#">GitHub</a></li><li><a href="#">LinkedIn</a></li></ul>`
	case canvas.TypeContact:
		return fmt.Sprintf(`<address class="contact">%s</address>`, label)
	}

	// Unrecognized or custom type: generic wrapper around the label.
	return fmt.Sprintf(`<div class="component">%s</div>`, label)
}
