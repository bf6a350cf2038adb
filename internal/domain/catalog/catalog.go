// Package catalog は旅行プラン生成で参照する静的テーブル（キュレーション済み行程、
// 汎用テンプレート、都市→国、国別の緊急連絡先）を保持する。
// テーブルは起動時に一度だけ読み込まれ、以降は読み取り専用として扱う。
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embeddedData embed.FS

const (
	destinationsFile = "destinations.yaml"
	safetyFile       = "safety.yaml"
)

// 汎用テンプレートのキー
const (
	TemplateDefault     = "default"
	TemplateNoMuseums   = "no-museums"
	TemplateOutdoorOnly = "outdoor-only"
	TemplateVegetarian  = "vegetarian"
)

// DayTemplate は1日分の行程テンプレート
type DayTemplate struct {
	Activities    []string `yaml:"activities"`
	Meals         []string `yaml:"meals"`
	Accommodation string   `yaml:"accommodation"`
	Transport     string   `yaml:"transport"`
	Notes         string   `yaml:"notes"`
}

func (t DayTemplate) clone() DayTemplate {
	t.Activities = append([]string(nil), t.Activities...)
	t.Meals = append([]string(nil), t.Meals...)
	return t
}

// CuratedDestination はキーワードで一致する既知の目的地
type CuratedDestination struct {
	Keyword string
	Name    string
	Center  orb.Point
	Days    []DayTemplate
}

// Helpline は国別の緊急連絡先
type Helpline struct {
	Number      string `yaml:"number"`
	ServiceName string `yaml:"service_name"`
	Website     string `yaml:"website"`
	Notes       string `yaml:"notes"`
}

// CulturalNotes は服装やエリアに関する注意事項
type CulturalNotes struct {
	Dress string `yaml:"dress"`
	Areas string `yaml:"areas"`
}

// CountryInfo は国ごとの安全情報
type CountryInfo struct {
	Name     string         `yaml:"name"`
	Helpline Helpline       `yaml:"helpline"`
	Culture  *CulturalNotes `yaml:"culture"`
}

type cityCountry struct {
	City    string `yaml:"city"`
	Country string `yaml:"country"`
}

type curatedDocument struct {
	Keyword string        `yaml:"keyword"`
	Name    string        `yaml:"name"`
	Center  []float64     `yaml:"center"` // [lng, lat]
	Days    []DayTemplate `yaml:"days"`
}

type destinationsDocument struct {
	Curated []curatedDocument      `yaml:"curated"`
	Generic map[string]DayTemplate `yaml:"generic"`
}

type safetyDocument struct {
	Cities     []cityCountry          `yaml:"cities"`
	Countries  map[string]CountryInfo `yaml:"countries"`
	General    []string               `yaml:"general"`
	Solo       []string               `yaml:"solo"`
	Disclaimer string                 `yaml:"disclaimer"`
}

// Catalog は読み込み済みの静的テーブル
type Catalog struct {
	curated    []CuratedDestination
	generic    map[string]DayTemplate
	cities     []cityCountry
	countries  map[string]CountryInfo
	general    []string
	solo       []string
	disclaimer string
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default は埋め込みデータから読み込んだカタログを返す
func Default() *Catalog {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embeddedData, "data")
		if err != nil {
			panic(fmt.Sprintf("埋め込みカタログの読み込みに失敗: %v", err))
		}
		c, err := LoadFS(sub)
		if err != nil {
			panic(fmt.Sprintf("埋め込みカタログの読み込みに失敗: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadFS はdestinations.yamlとsafety.yamlを含むファイルシステムからカタログを読み込む
func LoadFS(fsys fs.FS) (*Catalog, error) {
	destData, err := fs.ReadFile(fsys, destinationsFile)
	if err != nil {
		return nil, fmt.Errorf("%sの読み込みに失敗: %w", destinationsFile, err)
	}
	safetyData, err := fs.ReadFile(fsys, safetyFile)
	if err != nil {
		return nil, fmt.Errorf("%sの読み込みに失敗: %w", safetyFile, err)
	}
	return Load(destData, safetyData)
}

// Load はYAMLデータからカタログを構築する
func Load(destinationsYAML, safetyYAML []byte) (*Catalog, error) {
	var dest destinationsDocument
	if err := yaml.Unmarshal(destinationsYAML, &dest); err != nil {
		return nil, fmt.Errorf("目的地データのパースに失敗: %w", err)
	}
	var safety safetyDocument
	if err := yaml.Unmarshal(safetyYAML, &safety); err != nil {
		return nil, fmt.Errorf("安全情報データのパースに失敗: %w", err)
	}

	for _, key := range []string{TemplateDefault, TemplateNoMuseums, TemplateOutdoorOnly, TemplateVegetarian} {
		if _, ok := dest.Generic[key]; !ok {
			return nil, fmt.Errorf("汎用テンプレート %q が定義されていません", key)
		}
	}

	c := &Catalog{
		generic:    make(map[string]DayTemplate, len(dest.Generic)),
		countries:  make(map[string]CountryInfo, len(safety.Countries)),
		general:    safety.General,
		solo:       safety.Solo,
		disclaimer: strings.TrimSpace(safety.Disclaimer),
	}
	for key, tmpl := range dest.Generic {
		c.generic[key] = tmpl.clone()
	}

	for i, doc := range dest.Curated {
		keyword := strings.ToLower(strings.TrimSpace(doc.Keyword))
		if keyword == "" {
			return nil, fmt.Errorf("curated[%d]: keywordは必須です", i)
		}
		if len(doc.Days) == 0 {
			return nil, fmt.Errorf("curated[%d] (%s): 行程が1日も定義されていません", i, keyword)
		}
		if len(doc.Center) != 2 {
			return nil, fmt.Errorf("curated[%d] (%s): centerは[lng, lat]で指定してください", i, keyword)
		}
		days := make([]DayTemplate, len(doc.Days))
		for j, d := range doc.Days {
			days[j] = d.clone()
		}
		c.curated = append(c.curated, CuratedDestination{
			Keyword: keyword,
			Name:    doc.Name,
			Center:  orb.Point{doc.Center[0], doc.Center[1]},
			Days:    days,
		})
	}

	for _, cc := range safety.Cities {
		c.cities = append(c.cities, cityCountry{
			City:    strings.ToLower(strings.TrimSpace(cc.City)),
			Country: strings.TrimSpace(cc.Country),
		})
	}
	for key, info := range safety.Countries {
		if info.Culture != nil {
			culture := *info.Culture
			info.Culture = &culture
		}
		c.countries[strings.ToLower(strings.TrimSpace(key))] = info
	}

	return c, nil
}

// FindCuratedDestination は正規化済みの目的地に一致するキュレーション済み目的地を探す
func (c *Catalog) FindCuratedDestination(destination string) (CuratedDestination, bool) {
	destination = strings.ToLower(destination)
	for _, d := range c.curated {
		if strings.Contains(destination, d.Keyword) {
			days := make([]DayTemplate, len(d.Days))
			for i, day := range d.Days {
				days[i] = day.clone()
			}
			d.Days = days
			return d, true
		}
	}
	return CuratedDestination{}, false
}

// GenericTemplate は汎用テンプレートを取得する（不明なキーはdefault）
func (c *Catalog) GenericTemplate(key string) DayTemplate {
	if tmpl, ok := c.generic[key]; ok {
		return tmpl.clone()
	}
	return c.generic[TemplateDefault].clone()
}

// CountryForCity は目的地文字列に含まれる都市名から国名を解決する
func (c *Catalog) CountryForCity(destination string) (string, bool) {
	destination = strings.ToLower(destination)
	for _, cc := range c.cities {
		if strings.Contains(destination, cc.City) {
			return cc.Country, true
		}
	}
	return "", false
}

// Country は国名から安全情報を取得する
func (c *Catalog) Country(name string) (CountryInfo, bool) {
	info, ok := c.countries[strings.ToLower(strings.TrimSpace(name))]
	if ok && info.Culture != nil {
		culture := *info.Culture
		info.Culture = &culture
	}
	return info, ok
}

// GeneralGuidelines は全ての目的地に共通する安全上の注意を返す
func (c *Catalog) GeneralGuidelines() []string {
	return append([]string(nil), c.general...)
}

// SoloGuidelines は一人旅向けの追加の注意を返す
func (c *Catalog) SoloGuidelines() []string {
	return append([]string(nil), c.solo...)
}

// Disclaimer は安全情報の末尾に付ける免責文を返す
func (c *Catalog) Disclaimer() string {
	return c.disclaimer
}
