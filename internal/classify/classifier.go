package classify

import (
	"ipolls/internal/domain/comment"
	"ipolls/internal/keywords"
)

// Classifier classifies comment text against the configured party, topic
// and leader keyword sets. Construct once and share; all methods are
// safe for concurrent use.
type Classifier struct {
	matcher *Matcher
	parties []keywords.Category
	topics  []keywords.Category
	leaders []keywords.Category
}

// New builds a Classifier from a validated keyword configuration.
func New(cfg *keywords.Config) *Classifier {
	lists := make([][]string, 0, len(cfg.Parties)+len(cfg.Topics)+len(cfg.Leaders))
	for _, group := range [][]keywords.Category{cfg.Parties, cfg.Topics, cfg.Leaders} {
		for _, cat := range group {
			lists = append(lists, cat.Keywords)
		}
	}

	return &Classifier{
		matcher: NewMatcher(lists...),
		parties: cfg.Parties,
		topics:  cfg.Topics,
		leaders: cfg.Leaders,
	}
}

// ClassifyParty returns the party whose keywords occur most often in the
// text, counting every whole-word occurrence of every keyword.
//
// Ties on the top score resolve to the earliest configured party; this
// is a deliberate, documented policy (the configuration order is part of
// the contract), not an accident of iteration order. When no party
// keyword matches at all the result is comment.Undefined.
func (c *Classifier) ClassifyParty(text string) string {
	canonical := Canonical(text)
	if canonical == "" {
		return comment.Undefined
	}

	best := comment.Undefined
	bestScore := 0
	for _, party := range c.parties {
		score := 0
		for _, kw := range party.Keywords {
			score += c.matcher.Count(canonical, kw)
		}
		if score > bestScore {
			best = party.Name
			bestScore = score
		}
	}
	return best
}

// ClassifyTopics returns every topic mentioned in the text. For each
// topic the keyword list is scanned in order and scanning stops at the
// first keyword that occurs, so a topic contributes at most one label no
// matter how many of its keywords appear. A comment may carry several
// topic labels. When nothing matches the result is exactly
// [comment.Undefined], never an empty slice.
func (c *Classifier) ClassifyTopics(text string) []string {
	canonical := Canonical(text)

	var mentioned []string
	if canonical != "" {
		for _, topic := range c.topics {
			for _, kw := range topic.Keywords {
				if c.matcher.Present(canonical, kw) {
					mentioned = append(mentioned, topic.Name)
					break
				}
			}
		}
	}

	if len(mentioned) == 0 {
		return []string{comment.Undefined}
	}
	return mentioned
}

// ClassifyLeader returns the first configured leader with any keyword
// occurrence. Leader detection is presence-based where party detection
// is frequency-based; the two policies are intentionally distinct. No
// hit across all leaders yields comment.Undefined.
func (c *Classifier) ClassifyLeader(text string) string {
	canonical := Canonical(text)
	if canonical == "" {
		return comment.Undefined
	}

	for _, leader := range c.leaders {
		for _, kw := range leader.Keywords {
			if c.matcher.Present(canonical, kw) {
				return leader.Name
			}
		}
	}
	return comment.Undefined
}
