// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package authz decides whether an authenticated caller may use a route.

The Casbin model (model.conf) is RBAC with an ownership scope. Every caller
holds the member role; callers whose token carries a provider link also hold
provider, which inherits member. Policy rules (policy.csv) name a path pattern,
a method regex and a scope:

	p, member, /users/users/:userId, ^DELETE$, self

A "self" rule only matches when the {userId} route parameter equals the
caller's user id. A denied request is answered with 403 and never reaches the
handler.

Both files are embedded; CASBIN_MODEL_PATH and CASBIN_POLICY_PATH override
them.
*/
package authz
