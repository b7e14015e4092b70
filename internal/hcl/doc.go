// Package hcl loads weasel settings from HCL files. Expressions are evaluated
// with an `env` object holding the process environment, so a file can write
// `dict = env.WEASEL_DICT`.
package hcl
