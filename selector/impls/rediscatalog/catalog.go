package rediscatalog

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libpumpselect/selector"
)

// RedisCatalog serves pump tables out of redis: the pump identities live in a
// set under the key prefix, each pump's tables in a hash with one JSON field
// per table. Listing is sorted so scans stay deterministic.
type RedisCatalog interface {
	selector.Catalog

	SetPumpTables(name string, tables *selector.PumpTables) error
	DelPump(name string) error
}

func NewRedisCatalog(preKey string, redisCli *redis.Client, logger l.Wrapper) RedisCatalog {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "redisCatalog"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &redisCatalogImpl{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
	}
}

type redisCatalogImpl struct {
	logger   l.Wrapper
	preKey   string
	redisCli *redis.Client
}

func (impl *redisCatalogImpl) ListPumps() (names []string, err error) {
	names, err = impl.redisCli.SMembers(context.Background(), impl.pumpSetKey()).Result()
	if err != nil {
		return
	}

	sort.Strings(names)

	return
}

func (impl *redisCatalogImpl) PumpTables(name string) (tables *selector.PumpTables, err error) {
	m, err := impl.redisCli.HGetAll(context.Background(), impl.pumpKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = commerr.ErrNotFound
		}

		return
	}

	if len(m) == 0 {
		err = commerr.ErrNotFound

		return
	}

	tables = &selector.PumpTables{
		Boundary: impl.unmarshalTable(m["boundary"], name),
		Curves:   impl.unmarshalTable(m["curves"], name),
		Power:    impl.unmarshalTable(m["power"], name),
	}

	return
}

func (impl *redisCatalogImpl) SetPumpTables(name string, tables *selector.PumpTables) (err error) {
	if tables == nil {
		return commerr.ErrInvalidArgument
	}

	fields := make(map[string]interface{})

	for field, t := range map[string]*selector.Table{
		"boundary": tables.Boundary,
		"curves":   tables.Curves,
		"power":    tables.Power,
	} {
		if t == nil {
			continue
		}

		var d []byte

		d, err = json.Marshal(t)
		if err != nil {
			return
		}

		fields[field] = d
	}

	if len(fields) > 0 {
		err = impl.redisCli.HSet(context.Background(), impl.pumpKey(name), fields).Err()
		if err != nil {
			return
		}
	}

	err = impl.redisCli.SAdd(context.Background(), impl.pumpSetKey(), name).Err()

	return
}

func (impl *redisCatalogImpl) DelPump(name string) (err error) {
	err = impl.redisCli.SRem(context.Background(), impl.pumpSetKey(), name).Err()
	if err != nil {
		return
	}

	err = impl.redisCli.Del(context.Background(), impl.pumpKey(name)).Err()

	return
}

func (impl *redisCatalogImpl) unmarshalTable(d, pump string) *selector.Table {
	if d == "" {
		return nil
	}

	t := new(selector.Table)

	if err := json.Unmarshal([]byte(d), t); err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("pump", pump)).Warn("unmarshal table failed")

		return nil
	}

	return t
}

//
//
//

func (impl *redisCatalogImpl) pumpSetKey() string {
	return impl.preKey + "pumps"
}

func (impl *redisCatalogImpl) pumpKey(name string) string {
	return impl.preKey + "pump:" + name
}
