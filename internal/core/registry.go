package core

import (
	"fmt"
	"sort"
	"sync"

	"NewsHunter/internal/models"
	"NewsHunter/internal/platform"
)

// ID 平台的唯一标识，例如："newsapi"、"guardian"、"newyorktimes"。
// New 构造具体平台实例的工厂函数；入参与出参严格使用 platform 包中的类型。
// DefaultConfig 返回该平台的一个可用默认配置（实现 platform.Config）。

type Provider struct {
	ID models.ProviderID

	New func(cfg platform.Config) (platform.Platform, error)

	DefaultConfig func() platform.Config
}

var (
	regMu    sync.RWMutex
	registry = map[models.ProviderID]Provider{}
)

func Register(p Provider) error {
	if p.ID == "" {
		return fmt.Errorf("provider id must not be empty")
	}
	if p.New == nil || p.DefaultConfig == nil {
		return fmt.Errorf("provider %s is missing its factory", p.ID)
	}

	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := registry[p.ID]; exists {
		return fmt.Errorf("provider %s already registered", p.ID)
	}
	registry[p.ID] = p
	return nil
}

func MustRegister(p Provider) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

func Get(id models.ProviderID) (Provider, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	p, ok := registry[id]
	return p, ok
}

// List 按固定顺序返回已注册的平台
func List() []models.ProviderID {
	regMu.RLock()
	defer regMu.RUnlock()
	ids := make([]models.ProviderID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		if ids[i].Rank() != ids[j].Rank() {
			return ids[i].Rank() < ids[j].Rank()
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Build 为每个已注册平台创建实例；cfgs 中缺失的平台使用默认配置
func Build(cfgs map[models.ProviderID]platform.Config) ([]platform.Platform, error) {
	ids := List()
	out := make([]platform.Platform, 0, len(ids))
	for _, id := range ids {
		prov, _ := Get(id)
		cfg, ok := cfgs[id]
		if !ok || cfg == nil {
			cfg = prov.DefaultConfig()
		}
		p, err := prov.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("create platform %s: %w", id, err)
		}
		out = append(out, p)
	}
	return out, nil
}
