package river

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/zeu5/river-crossing-rl/types"
)

func entityColor(au aurora.Aurora, e Entity) aurora.Value {
	switch e {
	case Wolf:
		return au.Red(e.String())
	case Goat:
		return au.Yellow(e.String())
	case Cabbage:
		return au.Green(e.String())
	default:
		return au.Cyan(e.String())
	}
}

func renderSet(au aurora.Aurora, set []Entity) string {
	if len(set) == 0 {
		return "-"
	}
	parts := make([]string, len(set))
	for i, e := range set {
		parts[i] = entityColor(au, e).String()
	}
	return strings.Join(parts, " ")
}

// Render writes the three locations of the state on one line
func Render(w io.Writer, s State, color bool) {
	au := aurora.NewAurora(color)
	fmt.Fprintf(w, "%s %s %s %s %s\n",
		renderSet(au, s.Set(LeftBank)),
		au.Blue("~~"),
		renderSet(au, s.Set(Transport)),
		au.Blue("~~"),
		renderSet(au, s.Set(RightBank)),
	)
}

func outcomeColor(au aurora.Aurora, o types.Outcome) aurora.Value {
	switch o {
	case types.OutcomeWon:
		return au.Green(o.String())
	case types.OutcomeLost:
		return au.Red(o.String())
	default:
		return au.Yellow(o.String())
	}
}

// RenderStep prints a single transition
func RenderStep(w io.Writer, action int, ts *types.TimeStep, color bool) {
	name := fmt.Sprintf("Action(%d)", action)
	if a, err := ActionFromIndex(action); err == nil {
		name = a.String()
	}
	fmt.Fprintf(w, "Action: %d %s\n", action, name)
	fmt.Fprintf(w, "Reward: %v\n", ts.Reward)
	fmt.Fprintf(w, "Done: %v\n", ts.Done)
	if s, ok := ts.State.(State); ok {
		fmt.Fprint(w, "Next State: ")
		Render(w, s, color)
	}
}

// RenderTrace prints the final step of a rollout and its outcome
func RenderTrace(w io.Writer, episode int, trace *types.Trace, outcome types.Outcome, color bool) {
	au := aurora.NewAurora(color)
	fmt.Fprintf(w, "Episode: %d (%d steps, %s)\n", episode, trace.Len(), outcomeColor(au, outcome))
	_, action, reward, next, ok := trace.Last()
	if !ok {
		return
	}
	RenderStep(w, action, &types.TimeStep{State: next, Reward: reward, Done: outcome != types.OutcomeTruncated}, color)
	fmt.Fprintln(w)
}
