// Package domain contains the core domain model for the Secret Santa draw.
//
// The domain is transport- and persistence-agnostic: it does not depend on CSV
// parsing, net/http, SMTP, or the filesystem. Infra/adapters map into/from
// these types.
package domain
