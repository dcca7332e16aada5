// Package view renders state snapshots into presentable containers.
// Views are a small closed set of variants sharing helper functions;
// they hold no authoritative state and never call the store directly.
package view

// Container is the rendered output of a view, ready to be mounted by a
// page or modal presenter.
type Container struct {
	Kind string
	Body string
}

// Page presents the catalog and the basket counter.
type Page interface {
	SetCatalog(cards []*Container)
	SetBasketCount(n int)
}

// Modal presents one container at a time on top of the page.
type Modal interface {
	Show(c *Container)
	Close()
}
