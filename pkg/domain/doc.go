/*
Package domain contains the core domain models of the FRASIG analyser.

It defines the parse tree produced for a sentence, the sentence spans returned
by the external parser, and the Analysis assembled for a single request. This
package is kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Node: A constituent of a parse tree (a tagged phrase or a leaf token).
  - Sentence: One span detected by the parser, with its bracketed parse.
  - Analysis: The result of analysing one submitted sentence.
  - LifecycleHooks: Callbacks fired as an analysis moves through its stages.
*/
package domain
