/*
Package intake is a host-agnostic survey engine for anonymous, trauma-aware
questionnaires: paginated sections, conditional question visibility,
response validation, crisis-keyword detection, and autosave/break-reminder
scheduling.

The engine is a single-user state machine. The host (CLI, HTTP server, or
any other surface) drives it with discrete events — render, response,
navigation, tick — and the engine processes each synchronously against a
SessionState it owns. Persistence and identity are collaborators behind
interfaces (see pkg/ports); the engine only reads and writes an opaque
handle-keyed draft.

# Design principles

  - Nothing past startup is fatal: a malformed definition fails New, but a
    failed save is retried, a corrupt draft is discarded, and a rejected
    response leaves the session untouched. A respondent never loses the
    ability to continue or exit.
  - Conditions are typed predicates interpreted against the live response
    map, never cached and never eval'd as code. The cursor never rests on a
    hidden question.
  - Crisis detection is advisory: it flags, it never blocks.

# Usage

	def := definition.Builtin()
	eng, err := intake.New(def, intake.WithStore(file.New("")))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state := eng.Start(ctx, "pseudonym")

	for {
		view := eng.Current(state)
		if view.Phase == domain.PhaseSurveyComplete {
			eng.Complete(ctx, state)
			break
		}
		// present view, collect input, then:
		//   eng.SetResponse(ctx, state, view.Question.ID, resp)
		//   eng.Advance(state)
		eng.Tick(ctx, state)
	}
*/
package intake
