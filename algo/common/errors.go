package common

import "errors"

// Error-kind sentinels from the engine's error taxonomy. Format packages
// wrap these with fmt.Errorf("%w: ...") so callers can errors.Is across the
// dispatch boundary while still getting a human-readable message.
var (
	ErrUnsupportedCryptoVersion = errors.New("unsupported crypto version")
	ErrInvalidMagicHeader       = errors.New("invalid magic header")
	ErrInvalidAudioExtension    = errors.New("invalid audio extension")
	ErrCipherUninitialized      = errors.New("cipher uninitialized")
	ErrReadRawKey               = errors.New("read raw key")
	ErrInvalidRawMeta           = errors.New("invalid raw metadata")
	ErrInvalidRawMetaLen        = errors.New("invalid raw metadata length")
	ErrInvalidDecodeKey         = errors.New("invalid decode key")
	ErrInvalidSongID            = errors.New("invalid song id")
	ErrInvalidSTag              = errors.New("STag suffix does not contain media key")
	ErrUnknownMetaType          = errors.New("unknown meta type")
	ErrMetaTypeNotFound         = errors.New("meta type not found")
	ErrBase64Decode             = errors.New("base64 decode")
	ErrCrypto                   = errors.New("crypto")
	ErrParseMeta                = errors.New("parse meta")
	ErrNoDecoderForExtension    = errors.New("no decoder registered for extension")
)
