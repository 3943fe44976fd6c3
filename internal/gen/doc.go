// Package gen is the adapter to the generative AI backend. It exposes one
// stateless call per capability (fast translation, rich context, chat, image
// and vector illustration, speech synthesis). Calls are independently
// fallible; callers decide whether a failure degrades or propagates.
package gen
