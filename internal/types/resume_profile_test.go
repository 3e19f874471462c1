package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSentinel(t *testing.T) {
	assert.True(t, IsSentinel(""))
	assert.True(t, IsSentinel("  "))
	assert.True(t, IsSentinel("Not Found"))
	assert.True(t, IsSentinel("NOT EXTRACTED"))
	assert.False(t, IsSentinel("Developer"))
}

func TestHasJobTitle(t *testing.T) {
	var missing *ResumeProfile
	assert.False(t, missing.HasJobTitle())
	assert.False(t, (&ResumeProfile{JobTitle: " not found "}).HasJobTitle())
	assert.True(t, (&ResumeProfile{JobTitle: "Data Analyst"}).HasJobTitle())
}

func TestClone(t *testing.T) {
	p := &ResumeProfile{JobTitle: "QA Engineer", TopSkills: []string{"Selenium"}}
	c := p.Clone()
	c.TopSkills[0] = "Java"

	assert.Equal(t, "Selenium", p.TopSkills[0])
	assert.Nil(t, (*ResumeProfile)(nil).Clone())
}

func TestDefaultSkills_FreshCopy(t *testing.T) {
	skills := DefaultSkills()
	skills[0] = "Rust"
	assert.Equal(t, []string{"Python", "JavaScript", "SQL"}, DefaultSkills())
}
