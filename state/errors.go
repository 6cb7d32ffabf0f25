package state

import "github.com/pkg/errors"

var ErrUnknownHandle = errors.New("unknown handle")
var ErrDestroyed = errors.New("object has been destroyed")
var ErrHandleInUse = errors.New("handle is already in use")
