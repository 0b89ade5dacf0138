package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"stock-sentiment-analyzer/internal/indicators"
)

type Config struct {
	Data struct {
		PriceDir string `yaml:"price_dir" default:"data/yfinance_data" validate:"required"`
		NewsFile string `yaml:"news_file" default:"data/raw_analyst_ratings.csv"`
	} `yaml:"data"`
	Tickers    []string `yaml:"tickers" default:"[\"AAPL\",\"AMZN\",\"GOOG\",\"META\",\"MSFT\",\"NVDA\",\"TSLA\"]" validate:"min=1,dive,required"`
	Indicators struct {
		Groups     []string `yaml:"groups" default:"[\"trend\",\"momentum\",\"volume\",\"volatility\"]" validate:"dive,oneof=trend momentum volume volatility"`
		Custom     []string `yaml:"custom"`
		SMAWindows []int    `yaml:"sma_windows" default:"[5,10,20,50,100,200]" validate:"min=1,dive,gt=0"`
		RSIPeriod  int      `yaml:"rsi_period" default:"14" validate:"gt=0"`
		BBWindow   int      `yaml:"bb_window" default:"20" validate:"gt=0"`
		BBStdDev   float64  `yaml:"bb_stddev" default:"2" validate:"gt=0"`
		ATRPeriod  int      `yaml:"atr_period" default:"14" validate:"gt=0"`
	} `yaml:"indicators"`
	Metrics struct {
		Backend      string  `yaml:"backend" default:"auto" validate:"oneof=auto manual accelerated"`
		RiskFreeRate float64 `yaml:"risk_free_rate" default:"0.02" validate:"gte=0,lt=1"`
		PriceColumn  string  `yaml:"price_column" default:"Close" validate:"required"`
	} `yaml:"metrics"`
	Sentiment struct {
		TextField string `yaml:"text_field" default:"headline" validate:"required"`
		MaxLag    int    `yaml:"max_lag" default:"3" validate:"gte=0,lte=30"`
	} `yaml:"sentiment"`
	Output struct {
		Dir      string `yaml:"dir" default:"output" validate:"required"`
		Workbook string `yaml:"workbook" default:"analysis.xlsx"`
	} `yaml:"output"`
}

var validate = validator.New()

// Default returns a configuration with every default applied.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return c.IndicatorParams().Validate()
}

// IndicatorParams applies the configured lookbacks to the engine defaults.
func (c *Config) IndicatorParams() indicators.Params {
	p := indicators.DefaultParams()
	p.RSI = c.Indicators.RSIPeriod
	p.BBPeriod = c.Indicators.BBWindow
	p.BBDev = c.Indicators.BBStdDev
	p.ATR = c.Indicators.ATRPeriod
	p.Baseline = append([]int(nil), c.Indicators.SMAWindows...)
	return p
}

// LoadConfig reads a YAML file over the defaults. PRICE_DIR, NEWS_FILE and OUTPUT_DIR
// override the file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PRICE_DIR"); v != "" {
		c.Data.PriceDir = v
	}
	if v := os.Getenv("NEWS_FILE"); v != "" {
		c.Data.NewsFile = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	for i, t := range c.Tickers {
		c.Tickers[i] = strings.ToUpper(strings.TrimSpace(t))
	}
}
