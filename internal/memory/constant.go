package memory

// Log prefixes
const (
	LogPrefixAssembleHistory = "internal.memory.AssembleHistory"
	LogPrefixCachedEmbedder  = "internal.memory.CachedEmbedder"
)

// DefaultHistoryLimit is the history window used when none is configured.
const DefaultHistoryLimit = 15
