package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"

	model "task-manager.com/task-manager/internal/models"
)

// Tasks are stored as JSON documents under <prefix>:task:<id>; <prefix>:tasks is a
// sorted set of ids scored by creation time in milliseconds.
type RedisTaskRepository struct {
	client rueidis.Client
	prefix string
}

var updateIfVersionScript = rueidis.NewLuaScript(`
local cur = redis.call('GET', KEYS[1])
if not cur then return -1 end
local doc = cjson.decode(cur)
if tonumber(doc['version']) ~= tonumber(ARGV[1]) then return 0 end
redis.call('SET', KEYS[1], ARGV[2])
return 1
`)

var deleteScript = rueidis.NewLuaScript(`
local cur = redis.call('GET', KEYS[1])
if not cur then return false end
redis.call('DEL', KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[1])
return cur
`)

func NewRedisTaskRepository(client rueidis.Client, keyPrefix string) *RedisTaskRepository {
	return &RedisTaskRepository{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisTaskRepository) taskKey(id string) string {
	return fmt.Sprintf("%s:task:%s", r.prefix, id)
}

func (r *RedisTaskRepository) indexKey() string {
	return r.prefix + ":tasks"
}

func (r *RedisTaskRepository) CreateTask(ctx context.Context, name string, completed bool) (*model.Task, error) {
	now := time.Now().UTC()
	task := &model.Task{
		ID:        uuid.NewString(),
		Name:      name,
		Completed: completed,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}

	cmds := rueidis.Commands{
		r.client.B().Set().Key(r.taskKey(task.ID)).Value(string(doc)).Nx().Build(),
		r.client.B().Zadd().Key(r.indexKey()).ScoreMember().ScoreMember(float64(now.UnixMilli()), task.ID).Build(),
	}
	for _, resp := range r.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return nil, err
		}
	}

	return task, nil
}

func (r *RedisTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	doc, err := r.client.Do(ctx, r.client.B().Get().Key(r.taskKey(id)).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return decodeTask(doc)
}

func (r *RedisTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	ids, err := r.client.Do(ctx, r.client.B().Zrange().Key(r.indexKey()).Min("0").Max("-1").Rev().Build()).AsStrSlice()
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.taskKey(id)
	}

	docs, err := r.client.Do(ctx, r.client.B().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		return nil, err
	}

	for _, msg := range docs {
		doc, err := msg.ToString()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue
			}
			return nil, err
		}

		task, err := decodeTask(doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, nil
}

func (r *RedisTaskRepository) Update(ctx context.Context, task *model.Task) error {
	next := *task
	next.Version = task.Version + 1
	next.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(&next)
	if err != nil {
		return err
	}

	result, err := updateIfVersionScript.Exec(
		ctx,
		r.client,
		[]string{r.taskKey(task.ID)},
		[]string{strconv.FormatUint(uint64(task.Version), 10), string(doc)},
	).AsInt64()
	if err != nil {
		return err
	}

	switch result {
	case -1:
		return ErrNotFound
	case 0:
		return ErrOptimisticLock
	}

	*task = next
	return nil
}

func (r *RedisTaskRepository) Delete(ctx context.Context, id string) (*model.Task, error) {
	doc, err := deleteScript.Exec(
		ctx,
		r.client,
		[]string{r.taskKey(id), r.indexKey()},
		[]string{id},
	).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return decodeTask(doc)
}

func (r *RedisTaskRepository) Ping(ctx context.Context) error {
	return r.client.Do(ctx, r.client.B().Ping().Build()).Error()
}

func decodeTask(doc string) (*model.Task, error) {
	var task model.Task
	if err := json.Unmarshal([]byte(doc), &task); err != nil {
		return nil, fmt.Errorf("decode task document: %w", err)
	}
	return &task, nil
}
