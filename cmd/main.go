package main

import (
	"log"
	"os"

	api "stockadmin/cmd/stockadmin"
	"stockadmin/conf"
	"stockadmin/internal/middleware"
	"stockadmin/internal/model/entity"
	"stockadmin/pkg/cache"
	"stockadmin/pkg/db"
	"stockadmin/pkg/kafka"
	"stockadmin/pkg/logger"
	"stockadmin/pkg/utils"
)

func main() {

	// 加载配置文件
	err := conf.LoadConfig("conf/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.InitLogger(&appCfg.Log, appCfg.AppName)

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	if dbUser == "" || dbPass == "" || dbHost == "" {
		dbUser = appCfg.Username
		dbPass = appCfg.Db.Password
		dbHost = appCfg.Host
		dbPort = appCfg.Port
		dbName = appCfg.DbName
	}

	// 初始化数据库
	datasource := db.Init(db.NewConfig(dbUser, dbPass, dbHost, dbPort, dbName))
	if err := datasource.AutoMigrate(
		&entity.StrategyStock{},
		&entity.StrategyUserStock{},
		&entity.ConfigTemplate{},
		&entity.TimeSegmentTemplate{},
	); err != nil {
		logger.Fatalf("auto migrate failed: %v", err)
	}

	// 初始化redis缓存
	cache.InitRedis(appCfg.Redis)

	// 初始化雪花ID生成器
	if err := utils.InitIDGen(appCfg.SnowflakeId); err != nil {
		logger.Fatalf("init id generator failed: %v", err)
	}

	// 审计事件的kafka生产者，broker没配时退化为空实现
	producer := kafka.NewAuditProducer(appCfg.Kafka.Broker, appCfg.Kafka.AuditTopic)

	// 创建并启动服务
	srv := api.NewServer(&appCfg)
	srv.RegisterOnShutdown(func() {
		if datasource != nil {
			if m, err := datasource.DB(); err == nil {
				_ = m.Close()
			}
		}
		producer.Close()
		cache.CloseRedis()
		logger.Sync()
	})
	srvRouter := api.InitRouter(datasource, producer)

	srv.Run(middleware.NewMiddleware(), srvRouter)
}
