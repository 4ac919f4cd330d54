package view

import (
	"context"
	"fmt"
	"slices"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/renderer/core"
	"github.com/dshills/storefront/internal/shop"
)

// Catalog card dimensions.
const (
	cardWidth  = 30
	cardHeight = 5
	cardGap    = 1
)

// Page is the application shell: header with basket counter, catalog grid,
// status line and key help.
type Page struct {
	base
	format *Formatter

	catalog []shop.Product
	counter int
	locked  bool
	status  string

	cursor  int
	columns int
	scroll  int // first visible card row
}

// NewPage creates the page shell.
func NewPage(bus event.Bus, theme *Theme, format *Formatter) *Page {
	if format == nil {
		format = DefaultFormatter()
	}
	return &Page{
		base:    newBase(bus, theme, "page"),
		format:  format,
		columns: 1,
	}
}

// SetCounter sets the basket counter.
func (p *Page) SetCounter(n int) {
	p.counter = n
}

// SetCatalog replaces the cards. The cursor is kept when still in range.
func (p *Page) SetCatalog(products []shop.Product) {
	p.catalog = slices.Clone(products)
	if p.cursor >= len(p.catalog) {
		p.cursor = max(len(p.catalog)-1, 0)
	}
}

// SetLocked dims the page while a modal is open.
func (p *Page) SetLocked(locked bool) {
	p.locked = locked
}

// SetStatus shows a message on the status line. An empty message clears it.
func (p *Page) SetStatus(msg string) {
	p.status = msg
}

// Counter returns the displayed basket counter.
func (p *Page) Counter() int {
	return p.counter
}

// Locked reports whether the page is dimmed.
func (p *Page) Locked() bool {
	return p.locked
}

// Status returns the status message.
func (p *Page) Status() string {
	return p.status
}

// Catalog returns the displayed products.
func (p *Page) Catalog() []shop.Product {
	return slices.Clone(p.catalog)
}

// Cursor returns the index of the highlighted card.
func (p *Page) Cursor() int {
	return p.cursor
}

func (p *Page) style(s core.Style) core.Style {
	if p.locked {
		return p.theme.Locked(s)
	}
	return s
}

// Draw implements renderer.Drawable.
func (p *Page) Draw(c *renderer.Canvas) {
	area := c.Bounds()
	if area.IsEmpty() {
		return
	}

	c.Text(area.Left+1, area.Top, "STOREFRONT", p.style(p.theme.Accent))
	c.TextRight(area.Inset(0, 1, 0, 0), area.Top, fmt.Sprintf("Basket: %s", p.format.Count(p.counter)), p.style(p.theme.Title))
	c.HLine(area, area.Top+1, p.style(p.theme.Border))

	grid := core.Rect{Top: area.Top + 2, Left: area.Left + 1, Bottom: area.Bottom - 2, Right: area.Right - 1}
	p.drawGrid(c, grid)

	if p.status != "" {
		c.TextFit(area.Left+1, area.Bottom-2, area.Width()-2, p.status, p.style(p.theme.Error))
	}
	c.TextFit(area.Left+1, area.Bottom-1, area.Width()-2,
		"←↑↓→ move  Enter open  b basket  q quit", p.style(p.theme.Muted))
}

func (p *Page) drawGrid(c *renderer.Canvas, grid core.Rect) {
	if grid.IsEmpty() {
		return
	}
	if len(p.catalog) == 0 {
		c.Text(grid.Left, grid.Top, "Loading catalog…", p.style(p.theme.Muted))
		return
	}

	p.columns = max((grid.Width()+cardGap)/(cardWidth+cardGap), 1)
	visibleRows := max(grid.Height()/cardHeight, 1)

	row := p.cursor / p.columns
	if row < p.scroll {
		p.scroll = row
	}
	if row >= p.scroll+visibleRows {
		p.scroll = row - visibleRows + 1
	}

	for i, product := range p.catalog {
		r := i/p.columns - p.scroll
		if r < 0 || r >= visibleRows {
			continue
		}
		col := i % p.columns
		rect := core.RectFromSize(grid.Top+r*cardHeight, grid.Left+col*(cardWidth+cardGap), cardHeight, cardWidth)
		p.drawCard(c.Sub(grid), rect, product, i == p.cursor)
	}
}

func (p *Page) drawCard(c *renderer.Canvas, rect core.Rect, product shop.Product, selected bool) {
	border := p.theme.Border
	if selected {
		border = p.theme.Focus.Bold()
	}
	inner := c.Box(rect, "", p.style(border), p.style(p.theme.Text))
	if inner.IsEmpty() {
		return
	}

	c.TextFit(inner.Left+1, inner.Top, inner.Width()-2, " "+product.Category+" ", p.style(p.theme.Category(product.Category)))
	c.TextFit(inner.Left+1, inner.Top+1, inner.Width()-2, product.Title, p.style(p.theme.Title))
	c.TextFit(inner.Left+1, inner.Top+2, inner.Width()-2, p.format.Price(product.Price), p.style(p.theme.Text))
}

// HandleKey implements Component.
func (p *Page) HandleKey(ctx context.Context, ev backend.Event) (bool, error) {
	if ev.Type != backend.EventKey {
		return false, nil
	}

	switch {
	case isKey(ev, backend.KeyLeft):
		p.move(-1)
	case isKey(ev, backend.KeyRight):
		p.move(1)
	case isKey(ev, backend.KeyUp):
		p.move(-p.columns)
	case isKey(ev, backend.KeyDown):
		p.move(p.columns)
	case isKey(ev, backend.KeyEnter):
		if len(p.catalog) == 0 {
			return true, nil
		}
		return true, publish(ctx, p.base, events.TopicCardSelected, events.CardSelected{Product: p.catalog[p.cursor]})
	case isRune(ev, 'b'):
		return true, publish(ctx, p.base, events.TopicBasketOpened, events.BasketOpened{})
	case isRune(ev, 'q'), isKey(ev, backend.KeyCtrlC):
		return true, publish(ctx, p.base, events.TopicQuitRequested, events.QuitRequested{})
	default:
		return false, nil
	}
	return true, nil
}

func (p *Page) move(delta int) {
	if len(p.catalog) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.catalog)-1)
}
