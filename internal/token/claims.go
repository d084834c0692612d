package token

import "github.com/golang-jwt/jwt/v5"

// Claims is the Twilio access-token payload shape. The provider's client
// runtime is the verifier; this service only signs.
//
// Outbound-only invariant: Voice.Incoming.Allow is always false. The
// gateway never mints a grant that can receive calls.
type Claims struct {
	jwt.RegisteredClaims

	Grants Grants `json:"grants"`
}

type Grants struct {
	Identity string     `json:"identity"`
	Voice    VoiceGrant `json:"voice"`
}

type VoiceGrant struct {
	Outgoing OutgoingGrant `json:"outgoing"`
	Incoming IncomingGrant `json:"incoming"`
}

// OutgoingGrant binds the token to the TwiML application that answers
// the voice webhook.
type OutgoingGrant struct {
	ApplicationSID string `json:"application_sid"`
}

type IncomingGrant struct {
	Allow bool `json:"allow"`
}
