// Package xpath compiles the slash-delimited path syntax shared by every
// document format into a sequence of steps.
//
// Grammar:
//   - path      → ['/'] step ('/' step)*
//   - step      → '.' | '..' | '*' | name | '@' name | '@*', then predicates
//   - predicate → '[' n ']' (1-based) | '[last()]' | '[' operand [op literal] ']'
//     <operand> →  name  |  @name  |  .
//     <op>      →  =  !=  <  <=  >  >=
//     <literal> →  number  |  'string'  |  "string"
//
// Descendant steps ('//'), functions other than last() and boolean
// connectives raise ErrNotSupported at compile time.
package xpath
