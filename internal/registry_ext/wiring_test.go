package registry_ext

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/nabeel-hussain/ToDoApp/internal/application"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/http_server"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	"github.com/nabeel-hussain/ToDoApp/internal/config"
	bizConsts "github.com/nabeel-hussain/ToDoApp/internal/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/service"

	_ "github.com/nabeel-hussain/ToDoApp/internal/api"
)

const memoryConfig = `
app_info:
  app_name: todo-test
  env: test
logging:
  enabled: true
  level: error
  format: console
  output: stderr
http_server:
  enabled: true
  address: "127.0.0.1:0"
biz_config:
  store: memory
  default_page_size: 5
  max_page_size: 20
`

func TestMemoryStackBootsAndServes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(memoryConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	biz := config.Default()
	app := application.NewApp(consts.ENV_TEST, path, application.WithBizConfig(biz))
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer app.Shutdown(ctx)

	if biz.DefaultPageSize != 5 || biz.MaxPageSize != 20 {
		t.Fatalf("biz_config not decoded: %+v", biz)
	}
	svc, err := core.ResolveAs[*service.TaskService](app.Container(), bizConsts.COMP_SVC_TASK)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	if svc.Dao == nil || svc.Cache != nil {
		t.Fatalf("dao should be injected and cache left empty")
	}
	srvComp, err := core.ResolveAs[*http_server.HTTPServerComponent](app.Container(), consts.COMPONENT_HTTP_SERVER)
	if err != nil {
		t.Fatalf("http server: %v", err)
	}
	found := false
	for _, d := range srvComp.Dependencies() {
		found = found || d == bizConsts.COMP_CTRL_TASK
	}
	if !found {
		t.Fatalf("http server should start after the controller: %v", srvComp.Dependencies())
	}

	base := "http://" + srvComp.Addr() + "/api/ToDoTask"
	resp, err := http.Post(base+"/Create", "application/json", bytes.NewBufferString(`{"title":"wired"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", resp.StatusCode)
	}

	resp, err = http.Get(base + "/Get")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	resp.Body.Close()
	body := buf.String()
	if gjson.Get(body, "totalRecords").Int() != 1 || gjson.Get(body, "pageSize").Int() != 5 || gjson.Get(body, "data.0.title").String() != "wired" {
		t.Fatalf("list body %s", body)
	}
}

func TestGormStoreRequiresGormComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "app_info:\n  app_name: x\n  env: test\nbiz_config:\n  store: gorm\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	app := application.NewApp(consts.ENV_TEST, path, application.WithBizConfig(config.Default()))
	if err := app.Boot(); err == nil {
		t.Fatalf("expected boot failure when gorm is disabled")
	}
}
