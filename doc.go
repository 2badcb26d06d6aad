/*
Package frasig analyses Swedish sentences into simplified phrase-structure trees.

A sentence is sent to an external constituency parser, the first detected
sentence is read back as a tree, the tree is simplified for teaching purposes
(placeholder phrases are dissolved, lone verbs get a verb phrase, tags become
Swedish display labels) and the result is drawn as an SVG graphic.

# Concept

The statistical parser is a collaborator, not part of this module. It is loaded
once per process, injected into the Engine and treated as read-only, so the
Engine itself holds no per-request state. Everything it produces for a request
is returned in a domain.Analysis and discarded by the caller.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/frasig"
		"github.com/aretw0/frasig/pkg/adapters/remote"
	)

	func main() {
		parser, err := remote.New("http://localhost:8000")
		if err != nil {
			log.Fatal(err)
		}

		eng, err := frasig.New(parser)
		if err != nil {
			log.Fatal(err)
		}
		defer eng.Close()

		a, err := eng.Analyze(context.Background(), "Hunden sprang över gatan.")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(a.Bracketed)
	}

# Failure Model

Each pipeline stage reports failures through a sentinel in package domain
(ErrParse, ErrDeserialize, ErrNormalize, ErrRender). Front ends decide how to
surface them; the web form shows the page without a graphic.
*/
package frasig
