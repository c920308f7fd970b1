package widget

import "github.com/pders01/crossover/internal/catalog"

type debounceFiredMsg struct {
	seq   uint64
	query string
}

type blurElapsedMsg struct {
	seq uint64
}

type searchResultMsg struct {
	seq   uint64
	items []catalog.Item
	err   error
}

type recommendationsMsg struct {
	seq   uint64
	id    string
	items []catalog.Item
	err   error
}
