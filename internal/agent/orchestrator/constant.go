package orchestrator

// Log prefixes
const (
	LogPrefixRun      = "internal.agent.orchestrator.Run"
	LogPrefixRoute    = "internal.agent.orchestrator.route"
	LogPrefixFetch    = "internal.agent.orchestrator.fetch"
	LogPrefixRespond  = "internal.agent.orchestrator.respond"
	LogPrefixNoMemory = "internal.agent.orchestrator.RunWithoutMemory"
)

// FallbackMessage is appended as the reply when a step fails without a local fallback.
const FallbackMessage = "Sorry, something went wrong."

// Prompts. %[1]s is the current input, %[2]s the formatted history.
const (
	RouterPrompt = `You decide whether answering the user's current question requires retrieving older long-term memories.

The user's current question is:
"%[1]s"

The recent conversation history is:
%[2]s

Judge strictly from the question and this history whether it can be answered with what is in view, or whether older stored memories are needed.

Memory IS needed when:
- the question refers to something not clearly present in the history ("that idea I mentioned a while ago")
- the user asks to be reminded of, or to summarize, something they likely said before
- details required for the answer are missing from the history

Memory is NOT needed when:
- the question is general or self-contained
- the relevant details are visible in the history
- you can answer directly

Return your decision by calling check_memory_necessity. Do not write any other text.`

	QueryPrompt = `You write search queries that retrieve relevant memories for answering a user's question.

The conversation history is:
%[2]s

The current user question is:
"%[1]s"

1. Understand the question in the context of the history.
2. Identify the key entities, topics and past references it depends on.
3. Write 2 or 3 short, specific search queries, each under 10 words.

Do not repeat the whole question as a query and do not use generic phrases such as "find relevant information". Prefer named entities, specific topics, technical keywords and time references. If no memory is likely to help, use the question itself.

Return the queries by calling generate_search_queries. Do not write any other text.`

	ResponderPrompt = `You are a helpful, conversational AI assistant.

The user asked:
"%[1]s"

The recent conversation history is:
%[2]s
%[3]s
Using the question, the history and any retrieved memories, write a helpful, accurate, context-aware reply.
- Prefer the most relevant and most recent information.
- Weave any memories into the answer naturally; do not repeat them verbatim.
- Be concise but informative.
- If the question is ambiguous or unclear, politely ask for clarification.

Now respond to the user.`

	MemoryBlockHeader = "\nThese past memories were retrieved and may help answer the question:\n"

	NoMemoryPrompt = `You are a helpful AI assistant. Respond to the user's message without using memory.
User's message: %s`

	emptyHistory = "(no prior conversation)"
)
