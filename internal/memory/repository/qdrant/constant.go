package qdrant

const (
	LogPrefixNew    = "internal.memory.repository.qdrant.New"
	LogPrefixSearch = "internal.memory.repository.qdrant.Search"
	LogPrefixFetch  = "internal.memory.repository.qdrant.Fetch"

	scrollPageSize = 256
)
