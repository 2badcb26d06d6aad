/*
Package ports defines the driven ports (interfaces) of the FRASIG analyser.

These interfaces decouple the analysis pipeline from its collaborators, allowing
the engine to work with a remote parsing service or local fixtures, different
renderers, and different cache backends.

# Key Interfaces

  - SentenceParser: Segments text into sentences and returns a bracketed parse per sentence.
  - TreeRenderer: Turns a normalized tree into a displayable graphic.
  - ParseCache: Remembers parser answers for previously seen input.
*/
package ports
