package command

// Kind discriminates the closed set of voice commands the extractor can
// produce. The output sink switches exhaustively on it.
type Kind int

const (
	KindInsertText Kind = iota
	KindNewLine
	KindStopDictation
	KindPunctuation
)

func (k Kind) String() string {
	switch k {
	case KindInsertText:
		return "insert_text"
	case KindNewLine:
		return "new_line"
	case KindStopDictation:
		return "stop_dictation"
	case KindPunctuation:
		return "punctuation"
	}
	return "unknown"
}

// Command is an immutable tagged value extracted from recognized text.
// Text carries the literal insertion for KindInsertText and the symbol for
// KindPunctuation; it is empty for the control kinds.
type Command struct {
	Kind Kind
	Text string
}

func InsertText(text string) Command { return Command{Kind: KindInsertText, Text: text} }
func NewLine() Command               { return Command{Kind: KindNewLine} }
func StopDictation() Command         { return Command{Kind: KindStopDictation} }
func Punctuation(symbol string) Command {
	return Command{Kind: KindPunctuation, Text: symbol}
}
