// Package core defines the contracts every use case and controller in the
// service is built on.
//
// # Result
//
// A use case reports its outcome as a [Result]: either a value (built with
// [Ok]) or an error (built with [Fail]). The two states are mutually
// exclusive and a Result never changes after construction:
//
//	res := core.Ok(user)
//	res.IsError() // false
//	res.Value()   // user
//
//	res = core.Fail[User](core.KindNotFound.New("user not found"))
//	res.IsError() // true
//	res.Err()     // the *UseCaseError
//
// Reading the value of a failed Result is a programming error and panics with
// [ErrValueOfFailedResult]. Callers check [Result.IsError] first, or use
// [Result.Get] when a two-value form reads better.
//
// # Use case errors
//
// Expected business failures are [UseCaseError] values. Each carries a [Kind]
// naming its variant, so controllers pick a response by kind instead of by
// message text:
//
//	const KindPseudo core.Kind = "PseudoError"
//	err := KindPseudo.New("something is off")
//	err.Kind() // "PseudoError"
//
// # Use cases
//
// A [UseCase] exposes a single Execute method. It may report failure in two
// ways: a failed Result (a domain error the controller translates into a 4xx
// response) or a returned error (an unexpected failure the controller forwards
// to the centralized error handler).
package core
