package language

const (
	LogPrefixGenerate = "internal.agent.language.Generate"
	LogPrefixInvoke   = "internal.agent.language.Invoke"
)
