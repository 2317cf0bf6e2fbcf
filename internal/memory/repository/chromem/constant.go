package chromem

const (
	LogPrefixNew    = "internal.memory.repository.chromem.New"
	LogPrefixUpsert = "internal.memory.repository.chromem.Upsert"

	collectionPrefix = "user_"
)
