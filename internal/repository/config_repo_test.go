package repository

import (
	"os"
	"path/filepath"
	"testing"

	"pdd_helper_v1/internal/model"
)

func TestConfigRepoDefaults(t *testing.T) {
	repo := NewConfigRepository(t.TempDir())
	cfg := repo.Get()
	if cfg.AuthBase != model.DefaultAuthBase {
		t.Fatalf("缺省 authBase 不符: %q", cfg.AuthBase)
	}
	if cfg.GoodsId != model.DefaultGoodsID {
		t.Fatalf("缺省 goodsId 不符: %q", cfg.GoodsId)
	}
	if !cfg.RequireAuth {
		t.Fatalf("缺省 requireAuth 应为 true")
	}
}

func TestConfigRepoSaveOverwritesWholeDocument(t *testing.T) {
	dir := t.TempDir()
	repo := NewConfigRepository(dir)

	cfg := repo.Get()
	cfg.ClientId = "cid"
	cfg.ProductGoodsMapByShop = map[string]map[string]string{
		"店A": {"毛衣": "111"},
	}
	if err := repo.Save(cfg); err != nil {
		t.Fatalf("保存失败: %v", err)
	}

	got := NewConfigRepository(dir).Get()
	if got.ClientId != "cid" || got.ProductGoodsMapByShop["店A"]["毛衣"] != "111" {
		t.Fatalf("读回不符: %+v", got)
	}
}

func TestConfigRepoIgnoresCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{残缺"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := NewConfigRepository(dir).Get()
	// 解析失败时回退到缺省值，不报错
	if cfg.AuthBase != model.DefaultAuthBase {
		t.Fatalf("损坏文件应回退缺省值: %+v", cfg)
	}
}

func TestScheduleRepoDefaults(t *testing.T) {
	repo := NewScheduleRepository(t.TempDir())
	doc := repo.Get()
	shop, ok := doc.Shops[model.DefaultShopName]
	if !ok {
		t.Fatalf("缺省排期应包含默认店铺: %+v", doc.Shops)
	}
	if shop.IntervalSeconds != 300 || shop.DailyLimit != 50 || !shop.Enabled {
		t.Fatalf("缺省排期参数不符: %+v", shop)
	}
}

func TestScheduleRepoRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewScheduleRepository(dir)
	doc := repo.Get()
	doc.Shops["店B"] = model.ShopSchedule{StartTime: "10:30", IntervalSeconds: 120, DailyLimit: 5, Enabled: true}
	if err := repo.Save(doc); err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	got := NewScheduleRepository(dir).Get()
	if got.Shops["店B"].StartTime != "10:30" {
		t.Fatalf("读回不符: %+v", got.Shops)
	}
}
