package database

import (
	"fmt"
	"log"

	"skillreel_backend/internal/config"
	"skillreel_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认跳过自动迁移，--migrate / --migrate-only 强制执行
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Channel{},
		&model.Video{},
		&model.VideoTopicSegment{},
		&model.InterestScore{},
		&model.CreatorWatchStat{},
		&model.WatchAuditEvent{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.SkillEntry{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDemoContent(db)

	return db, nil
}

// seedDemoContent 在空库时写入一条演示频道/视频及其分段与题目，方便本地联调
func seedDemoContent(db *gorm.DB) {
	var count int64
	db.Model(&model.Video{}).Count(&count)
	if count > 0 {
		return
	}

	creator := &model.User{
		Email:       "creator@skillreel.local",
		DisplayName: "演示创作者",
		Role:        model.Creator,
	}
	if err := db.Create(creator).Error; err != nil {
		log.Printf("seed creator failed: %v", err)
		return
	}

	channel := &model.Channel{
		Name:          "Go 入门频道",
		CreatorUserID: creator.ID,
	}
	if err := db.Create(channel).Error; err != nil {
		log.Printf("seed channel failed: %v", err)
		return
	}

	video := &model.Video{
		Title:           "Goroutine 与 Channel 基础",
		ChannelID:       &channel.ID,
		DurationSeconds: 480,
	}
	if err := db.Create(video).Error; err != nil {
		log.Printf("seed video failed: %v", err)
		return
	}

	segments := []model.VideoTopicSegment{
		{VideoID: video.ID, Tag: "golang", Weight: 10, StartPct: 0, EndPct: 100},
		{VideoID: video.ID, Tag: "concurrency", Weight: 8, StartPct: 20, EndPct: 80},
		{VideoID: video.ID, Tag: "channels", Weight: 5, StartPct: 50, EndPct: 100},
	}
	for i := range segments {
		if err := db.Create(&segments[i]).Error; err != nil {
			log.Printf("seed segment failed: %v", err)
		}
	}

	questions := []model.QuizQuestion{
		{VideoID: video.ID, LessonNumber: 1, SkillTag: "golang", QuestionText: "用自己的话解释 goroutine 与操作系统线程的区别。"},
		{VideoID: video.ID, LessonNumber: 2, SkillTag: "concurrency", QuestionText: "什么情况下向一个无缓冲 channel 发送会阻塞？"},
		{VideoID: video.ID, LessonNumber: 3, SkillTag: "channels", QuestionText: "描述 select 语句在多个 channel 就绪时的行为。"},
	}
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			log.Printf("seed question failed: %v", err)
		}
	}

	log.Println("Demo content seeded")
}
