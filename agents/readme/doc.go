/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package readme binds the README generator agent: it selects the model
backend from the credentials, assembles the tool groups that are available,
and runs conversations through the OpenAI executor.

Tool groups are independent. Repository tools need GITHUB_ACCESS_TOKEN,
memory tools need MEM0_API_KEY, and file tools are always present. A missing
optional credential only removes its group and is logged as a warning; a
missing model credential fails construction with ErrMissingCredential.
*/
package readme
