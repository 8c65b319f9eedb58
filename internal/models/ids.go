package models

import "github.com/thenoetrevino/lista/internal/types"

// ID is re-exported so model files read naturally
type ID = types.ID
