package usecase

const (
	LogPrefixHandleTurn      = "internal.chat.usecase.HandleTurn"
	LogPrefixClearUserMemory = "internal.chat.usecase.ClearUserMemory"
	LogPrefixHistory         = "internal.chat.usecase.History"
)
