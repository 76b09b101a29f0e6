// Package redisstore guarda los formularios abiertos en Redis como JSON con vencimiento.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/draft"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var _ repository.DraftStore = (*DraftStore)(nil)

const keyPrefix = "tienda:draft:"

// DraftStore implementación de repository.DraftStore sobre go-redis.
// Cada Save renueva el vencimiento: un formulario vence tras ttl sin actividad.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore construye el store. ttl <= 0 = sin vencimiento.
func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *DraftStore) Save(ctx context.Context, sess *draft.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("serializar formulario: %w", err)
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.redisKey(sess.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("guardar formulario: %w", err)
	}
	return nil
}

func (s *DraftStore) Get(ctx context.Context, id string) (*draft.Session, error) {
	return decode(s.client.Get(ctx, s.redisKey(id)))
}

// Take usa GETDEL: Redis garantiza que un solo cliente recibe el valor.
func (s *DraftStore) Take(ctx context.Context, id string) (*draft.Session, error) {
	return decode(s.client.GetDel(ctx, s.redisKey(id)))
}

func decode(cmd *redis.StringCmd) (*draft.Session, error) {
	payload, err := cmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("leer formulario: %w", err)
	}
	var sess draft.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("formulario corrupto: %w", err)
	}
	return &sess, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.redisKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("borrar formulario: %w", err)
	}
	return nil
}

func (s *DraftStore) redisKey(id string) string {
	return keyPrefix + id
}
