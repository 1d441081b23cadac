package repository

import "context"

// KeyValueStore puerto de almacenamiento clave → JSON (equivalente del localStorage del navegador).
// Get devuelve (nil, nil) si la clave no existe.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
