/*
Package trigram provides an in-memory, order-3 word model that learns which
word follows each pair of words in a body of text and samples from those
counts to generate new sequences.

Training lowercases the text, splits it on whitespace, replaces words at or
below a frequency threshold with an Unknown token, pads the stream with two
Start tokens and one End token, and counts every trigram. Generation walks
the counts from (Start, Start), or from a caller-supplied seed, until the End
token is drawn, an unseen context is reached, or the length limit is hit.

There is no smoothing and no persistence: a Model lives for as long as its
process does.
*/
package trigram
