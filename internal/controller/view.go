package controller

import "github.com/roach88/myrecipes/internal/recipe"

// EmptyMessage is shown when the list is loaded and has no records.
const EmptyMessage = "No recipes added yet."

// Item is one presentation-ready row.
type Item struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	HasImage    bool   `json:"has_image"`
}

// View is everything a consuming surface needs to draw the list.
type View struct {
	State    string `json:"state"`
	Loading  bool   `json:"loading"`
	Degraded bool   `json:"degraded,omitempty"`
	Items    []Item `json:"items"`
	Message  string `json:"message,omitempty"`
}

// Items returns the presentation rows for the current list. Descriptions
// are truncated with recipe.TruncateDescription.
func (c *Controller) Items() []Item {
	return itemsFor(c.Recipes())
}

// View returns the current presentation snapshot.
func (c *Controller) View() View {
	c.mu.RLock()
	state, degraded := c.state, c.degraded
	items := itemsFor(c.recipes)
	c.mu.RUnlock()

	v := View{
		State:    state.String(),
		Loading:  state != Ready,
		Degraded: degraded,
		Items:    items,
	}
	if state == Ready && len(items) == 0 {
		v.Message = EmptyMessage
	}
	return v
}

func itemsFor(c recipe.Collection) []Item {
	items := make([]Item, len(c))
	for i, r := range c {
		items[i] = Item{
			Index:       i,
			Title:       r.Title,
			Description: recipe.TruncateDescription(r.Description),
			Image:       r.Image,
			HasImage:    r.HasImage(),
		}
	}
	return items
}
