// Package taul is a parser-generator toolkit: feed it a spec.Spec describing
// lexical (LPR) and syntactic (PPR) rules, and Load returns a Grammar ready
// to drive a Reader/Lexer/Parser pipeline over source text into a parse
// tree. Most callers only need this package plus taul/spec (to build a
// Spec) and taul/tree (to walk the result); the subpackages
// (spec, validate, lower, table, grammar, pipeline, tree, taulerr, diag,
// taulconfig) remain independently usable the same way
// internal/ictiobus/grammar, lex, and parse are in the teacher.
package taul
