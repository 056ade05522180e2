package core

// MatchMode selects how a query string is compiled into an engine query
// (spec §4.5). It is the single source of truth consulted by the query
// compiler, the CLI's --mode flag, and the overflow planner's narrowing
// commands.
type MatchMode string

const (
	ModeText  MatchMode = "text"
	ModeExact MatchMode = "exact"
	ModeFuzzy MatchMode = "fuzzy"
	ModeRegex MatchMode = "regex"
)

// OutputMode selects the shape of the top-level envelope (spec §4.10).
type OutputMode string

const (
	OutputMatch OutputMode = "match"
	OutputHit   OutputMode = "hit"
	OutputValue OutputMode = "value"
)

// AllField is the synthetic index field name that concatenates every leaf
// value of a record into one tokenized text field, backing the default
// --all search mode (spec §4.4).
const AllField = "__all__"

// StdinSource is the source-file label used for records shredded from
// standard input (spec §4.2).
const StdinSource = "-"

// DefaultOverflowThreshold is the post-dedup hit count above which the
// overflow planner engages instead of returning result records (spec §4.9).
const DefaultOverflowThreshold = 50

// SearchSafetyMargin pads the engine top-k request beyond limit+offset so
// that deduplication, which runs after retrieval but before pagination, has
// enough candidates to collapse without starving the requested page
// (spec §4.6).
const SearchSafetyMargin = 200
