// Package authkit provides authentication primitives for web services: signed
// token issuance across four token kinds, refresh-token rotation with a
// Redis-backed revocation cache, route guarding, and the account lifecycle
// flows (sign-up, email confirmation, sign-in, password reset) that depend on
// them.
//
// Token kinds:
//   - Access, refresh, confirmation, and reset-password tokens each carry
//     their own signing secret and time-to-live. A token minted for one kind
//     never verifies under another, even when the payloads look alike.
//   - Refresh tokens embed a tokenId that survives rotation, so a logout can
//     revoke an entire chain of rotated tokens with a single cache entry.
//
// Revocation:
//   - TokenBlacklist marks a (user, tokenId) pair as revoked until the token
//     would have expired on its own. The cache entry's TTL is derived from the
//     token's expiry, so the blacklist never outgrows the live token set.
//
// Route guarding:
//   - Guard is a fiber middleware parameterized per route with a RoutePolicy
//     (public flag plus an allowed-role set). Public routes still resolve the
//     caller's identity when a valid bearer token is present.
package authkit
