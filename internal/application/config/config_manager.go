package config

type ConfigManager struct {
	loader    *Loader
	validator *Validator
	appConfig *AppConfig
}

func NewConfigManager(env string, configPath string) *ConfigManager {
	return &ConfigManager{
		loader:    NewLoader(env, configPath),
		validator: NewValidator(),
	}
}

// NewConfigManagerWithBiz 直接提供业务配置指针
func NewConfigManagerWithBiz(env, configPath string, biz any) *ConfigManager {
	cm := NewConfigManager(env, configPath)
	cm.SetBizConfig(biz)
	return cm
}

// SetBizConfig 需在 LoadConfig 之前调用
func (cm *ConfigManager) SetBizConfig(b any) { cm.loader.SetBizConfig(b) }

func (cm *ConfigManager) LoadConfig() error {
	if err := cm.validator.validateConfigFilePath(cm.loader.configPath); err != nil {
		return err
	}
	cfg, err := cm.loader.LoadConfig()
	if err != nil {
		return err
	}
	if err := cm.validator.ValidateAppConfig(cfg); err != nil {
		return err
	}
	cm.appConfig = cfg
	return nil
}

func (cm *ConfigManager) GetConfig() *AppConfig { return cm.appConfig }

func (cm *ConfigManager) BizConfig() any {
	if cm.appConfig == nil {
		return nil
	}
	return cm.appConfig.BizConfig
}
