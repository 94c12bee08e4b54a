/*
Package corpus supplies raw corpus text to Markov models.

A Provider returns the text of one corpus. FileProvider and ReaderProvider
wrap local sources; Store keeps named corpora in a SQLite database and hands
out a Provider per name. Tokenization is left to the consumer.
*/
package corpus
