// Package repository talks to Maven-style repositories.
//
// # Overview
//
// A [Set] is the normalised list of repository base URLs. Named aliases
// (mavenCentral, jcenter, google, plus any configured ones) expand to fixed
// URLs, anything else is taken as a raw URL, and every base ends with
// exactly one "/".
//
// A [Client] fetches a repository-relative path by trying each base in
// turn. The first 200 response wins and the remaining repositories are not
// contacted. Transport errors and other statuses are logged and the next
// repository is tried; running out of repositories is reported as an absent
// result rather than an error, so callers decide whether it is fatal:
//
//	repos, _ := repository.NewSet([]string{"mavenCentral", "google"}, nil)
//	client := repository.NewClient(repos, repository.WithLogger(logger))
//	pom, ok := client.FetchText(ctx, coord.ManifestPath())
//	if !ok {
//	    // not available anywhere
//	}
//
// The order in which repositories are tried is an implementation detail.
//
// # Retries
//
// [WithRetries] enables per-repository retries with exponential backoff.
// Only transport errors and 429/5xx responses are retried; a 404 moves on
// to the next repository immediately.
//
// # Credentials
//
// [LoadNetrc] reads HTTP basic-auth credentials from a .netrc file, keyed by
// repository host, and [WithCredentials] attaches them to requests.
package repository
