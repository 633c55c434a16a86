package consts

// Component names for the to-do service.
const (
	COMP_DAO_TASK        = "task_dao"
	COMP_CACHE_TASK_PAGE = "task_page_cache"
	COMP_SVC_TASK        = "task_service"
	COMP_CTRL_TASK       = "task_controller"
)

// Store backends selectable through biz_config.store.
const (
	STORE_MEMORY = "memory"
	STORE_GORM   = "gorm"
)

const API_PREFIX = "/api/ToDoTask"
