package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ipolls/internal/domain/comment"
	"ipolls/internal/keywords"
)

func testConfig() *keywords.Config {
	return &keywords.Config{
		Parties: []keywords.Category{
			{Name: "PS", Keywords: []string{"ps", "partido socialista"}},
			{Name: "AD", Keywords: []string{"ad", "psd"}},
			{Name: "CHEGA", Keywords: []string{"chega", "ventura"}},
		},
		Topics: []keywords.Category{
			{Name: "taxes", Keywords: []string{"impostos", "irs"}},
			{Name: "health", Keywords: []string{"saúde", "sns"}},
			{Name: "housing", Keywords: []string{"habitação", "rendas"}},
		},
		Leaders: []keywords.Category{
			{Name: "Pedro Nuno Santos", Keywords: []string{"pedro nuno"}},
			{Name: "André Ventura", Keywords: []string{"ventura"}},
		},
	}
}

func TestClassifyPartyHighestScoreWins(t *testing.T) {
	c := New(testConfig())

	// CHEGA scores 4 (three "chega" plus one "ventura"), PS scores 1.
	got := c.ClassifyParty("Chega chega CHEGA, o Ventura contra o PS")
	assert.Equal(t, "CHEGA", got)
}

func TestClassifyPartyTieGoesToFirstConfigured(t *testing.T) {
	c := New(testConfig())

	assert.Equal(t, "PS", c.ClassifyParty("o PS e o PSD empatados"))
}

func TestClassifyPartyNoMatch(t *testing.T) {
	c := New(testConfig())

	assert.Equal(t, comment.Undefined, c.ClassifyParty("bom dia a todos"))
	assert.Equal(t, comment.Undefined, c.ClassifyParty(""))
	assert.Equal(t, comment.Undefined, c.ClassifyParty("?!"))
}

func TestClassifyPartySubstringsDoNotCount(t *testing.T) {
	c := New(testConfig())

	// "chegada" contains "chega" but is not a whole-word hit.
	assert.Equal(t, comment.Undefined, c.ClassifyParty("a chegada do comboio"))
}

func TestClassifyTopicsMultiLabel(t *testing.T) {
	c := New(testConfig())

	got := c.ClassifyTopics("os impostos sobem e a saúde piora")
	assert.Equal(t, []string{"taxes", "health"}, got)
}

func TestClassifyTopicsOneLabelPerTopic(t *testing.T) {
	c := New(testConfig())

	// Both taxes keywords occur; the topic still contributes one label.
	got := c.ClassifyTopics("impostos e IRS outra vez")
	assert.Equal(t, []string{"taxes"}, got)
}

func TestClassifyTopicsNoMatch(t *testing.T) {
	c := New(testConfig())

	assert.Equal(t, []string{comment.Undefined}, c.ClassifyTopics("nada de politica"))
	assert.Equal(t, []string{comment.Undefined}, c.ClassifyTopics(""))
}

func TestClassifyLeaderFirstConfiguredHit(t *testing.T) {
	c := New(testConfig())

	got := c.ClassifyLeader("o Pedro Nuno respondeu ao Ventura")
	assert.Equal(t, "Pedro Nuno Santos", got)
}

func TestClassifyLeaderPresenceNotFrequency(t *testing.T) {
	c := New(testConfig())

	// Party classification is frequency based and picks CHEGA here, but
	// leader classification stops at the first configured hit.
	text := "chega chega chega, diz o Ventura ao Pedro Nuno"
	assert.Equal(t, "CHEGA", c.ClassifyParty(text))
	assert.Equal(t, "Pedro Nuno Santos", c.ClassifyLeader(text))
}

func TestClassifyLeaderNoMatch(t *testing.T) {
	c := New(testConfig())

	assert.Equal(t, comment.Undefined, c.ClassifyLeader("sem nomes aqui"))
	assert.Equal(t, comment.Undefined, c.ClassifyLeader(""))
}
