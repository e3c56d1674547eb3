// Package cmdlib provides stock commands for a [console.Console].
//
//   - echo <text...>: write the rest of the line
//   - fib <int>: write a Fibonacci number
//   - expr <expression>: evaluate an expr-lang expression over the bound
//     variables, e.g. "expr health > 50 ? 'ok' : 'low'"
//   - pathprefix <cvar id> <item>...: prepend items to a PATH-like variable
package cmdlib
