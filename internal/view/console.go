package view

import (
	"fmt"
	"io"
	"sync"
)

// ConsolePage writes the catalog and basket counter to a terminal.
type ConsolePage struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsolePage(w io.Writer) *ConsolePage {
	return &ConsolePage{w: w}
}

func (p *ConsolePage) SetCatalog(cards []*Container) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "=== Catalog (%d items) ===\n", len(cards))
	for _, card := range cards {
		fmt.Fprint(p.w, card.Body)
	}
}

func (p *ConsolePage) SetBasketCount(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "=== Basket: %d item(s) ===\n", n)
}

// ConsoleModal shows one container at a time on the terminal.
type ConsoleModal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleModal(w io.Writer) *ConsoleModal {
	return &ConsoleModal{w: w}
}

func (m *ConsoleModal) Show(c *Container) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintf(m.w, "--- %s ---\n%s", c.Kind, c.Body)
}

func (m *ConsoleModal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintln(m.w, "--- closed ---")
}
