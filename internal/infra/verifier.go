// README: Token verifier chain; local JWTs first, then the optional managed provider.
package infra

import (
	"context"
	"errors"
)

var ErrNoVerifier = errors.New("no token verifier configured")

type chainVerifier []TokenVerifier

// ChainVerifier accepts a token when any of verifiers accepts it, trying them in order.
// Nil verifiers are skipped. The error of the last verifier tried is returned.
func ChainVerifier(verifiers ...TokenVerifier) TokenVerifier {
	var chain chainVerifier
	for _, v := range verifiers {
		if v != nil {
			chain = append(chain, v)
		}
	}
	if len(chain) == 1 {
		return chain[0]
	}
	return chain
}

func (c chainVerifier) VerifyIDToken(ctx context.Context, raw string) (*VerifiedToken, error) {
	err := ErrNoVerifier
	for _, v := range c {
		var tok *VerifiedToken
		if tok, err = v.VerifyIDToken(ctx, raw); err == nil {
			return tok, nil
		}
	}
	return nil, err
}
