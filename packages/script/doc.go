// Package script runs the before and after scripts attached to requests.
//
// Scripts are evaluated by an Evaluator against the current run variables.
// A script that returns a mapping promotes each pair into the variables and
// into the durable store, which is how a step hands values to later steps and
// to later invocations. The default Evaluator uses expr-lang/expr:
//
//	{token: jsonPath(response_body, "data.token"), user_id: "42"}
//
// Any other result (a scalar, nil) is ignored.
package script
