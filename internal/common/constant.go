package common

// SaltAlphabet is the set of characters record salts are drawn from.
const SaltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
