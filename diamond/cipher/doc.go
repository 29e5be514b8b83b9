// Package cipher implements the diamond-ring transposition cipher.
//
// Encryption writes a prepared message along the diamond rings of a square
// grid (outermost ring first), pads every other cell with random letters and
// reads the grid column by column. Decryption reloads the grid, walks the same
// rings and keeps every non-blank cell. Rounds compose by feeding one round's
// output into the next.
//
// The engine is total: it never validates its inputs and never returns an
// error. Bad parameters or malformed ciphertext produce garbage output, not
// failures. Callers that accept user input should check it first with the
// Validate helpers in this package.
//
// This is a toy transposition cipher. It has no key and provides no
// confidentiality against anyone who knows the construction.
package cipher
