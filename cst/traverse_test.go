package cst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twigcst/twigcst/cst"
	"github.com/twigcst/twigcst/syntax"
)

func TestWalkVisitsEveryNodeAndToken(t *testing.T) {
	root := parse(t, `<div class="a">{{ x }}</div>`)

	var enters []syntax.Kind
	var tokens []syntax.Kind
	var stack []syntax.Kind
	cst.Walk(root, func(ev cst.Event) cst.SkipSubtree {
		switch {
		case ev.Token != nil:
			tokens = append(tokens, ev.Token.ElementKind())
		case ev.Leaving:
			require.NotEmpty(t, stack)
			top := stack[len(stack)-1]
			require.Equal(t, top, ev.Node.Kind(), "Leave must match the most recently Entered, not-yet-left node")
			stack = stack[:len(stack)-1]
		default:
			enters = append(enters, ev.Node.Kind())
			stack = append(stack, ev.Node.Kind())
		}
		return cst.Continue
	})

	assert.Empty(t, stack, "every Enter must be balanced by a Leave")
	assert.NotEmpty(t, tokens)
	assert.Contains(t, enters, syntax.HtmlTag)
	assert.Contains(t, enters, syntax.TwigVar)
	assert.Contains(t, enters, syntax.TwigExpression)
}

func TestWalkSkipSubtreeSuppressesDescentAndLeave(t *testing.T) {
	root := parse(t, `<div><span>nested</span></div>`)
	outerRange := root.Children()[0].TextRange()

	var visitedText bool
	var sawOuterEnter, sawOuterLeave bool
	cst.Walk(root, func(ev cst.Event) cst.SkipSubtree {
		if ev.Token != nil {
			return cst.Continue
		}
		if ev.Node.Kind() == syntax.HtmlTag && ev.Node.TextRange() == outerRange {
			if ev.Leaving {
				sawOuterLeave = true
			} else {
				sawOuterEnter = true
				return cst.Skip
			}
		}
		if ev.Node.Kind() == syntax.HtmlText {
			visitedText = true
		}
		return cst.Continue
	})
	assert.True(t, sawOuterEnter)
	assert.False(t, sawOuterLeave, "Skip on Enter must suppress the matching Leave too")
	assert.False(t, visitedText, "Skip on the outer tag must prevent descending into its body")
}

func TestWalkTokenEventsCarryNoNode(t *testing.T) {
	root := parse(t, `<br>`)
	found := false
	cst.Walk(root, func(ev cst.Event) cst.SkipSubtree {
		if ev.Token != nil {
			found = true
			require.Nil(t, ev.Node)
		}
		return cst.Continue
	})
	assert.True(t, found)
}
