// Package telemetry rotates the editor's persistent telemetry identifiers.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	machineIDKey = "telemetry.machineId"
	deviceIDKey  = "telemetry.devDeviceId"

	machineIDBackupName = "machine_id_backup.json"
)

// Rotation records one identifier rotation, including where the previous
// values were backed up.
type Rotation struct {
	EditorKey           string `json:"editor_type"`
	StoragePath         string `json:"storage_path"`
	BackupPath          string `json:"backup_created"`
	MachineIDBackupPath string `json:"machine_id_backup_path"`
	OldMachineID        string `json:"old_machine_id"`
	NewMachineID        string `json:"new_machine_id"`
	OldDeviceID         string `json:"old_device_id"`
	NewDeviceID         string `json:"new_device_id"`
}

// idBackup is the durable record of the replaced identifiers.
type idBackup struct {
	Timestamp    string `json:"timestamp"`
	OldMachineID string `json:"old_machine_id"`
	OldDeviceID  string `json:"old_device_id"`
	EditorKey    string `json:"editor_type"`
}

// RotateIDs replaces telemetry.machineId and telemetry.devDeviceId in the
// given storage.json with fresh UUIDs. The original file is copied to
// storage.json.bak and the old identifiers are additionally written to
// machine_id_backup.json alongside it. A missing storage file is an error:
// there is nothing to rotate.
func RotateIDs(editorKey, storagePath string, logger *zap.Logger) (*Rotation, error) {
	raw, err := os.ReadFile(storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file %s: %w", storagePath, err)
	}

	var store map[string]any
	if err := json.Unmarshal(raw, &store); err != nil {
		return nil, fmt.Errorf("failed to parse storage file %s: %w", storagePath, err)
	}

	backupPath := storagePath + ".bak"
	if err := os.WriteFile(backupPath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write backup %s: %w", backupPath, err)
	}

	rotation := &Rotation{
		EditorKey:    editorKey,
		StoragePath:  storagePath,
		BackupPath:   backupPath,
		OldMachineID: stringValue(store, machineIDKey),
		OldDeviceID:  stringValue(store, deviceIDKey),
		NewMachineID: uuid.NewString(),
		NewDeviceID:  uuid.NewString(),
	}

	rotation.MachineIDBackupPath = filepath.Join(filepath.Dir(storagePath), machineIDBackupName)
	idb := idBackup{
		Timestamp:    time.Now().Format(time.RFC3339),
		OldMachineID: rotation.OldMachineID,
		OldDeviceID:  rotation.OldDeviceID,
		EditorKey:    editorKey,
	}
	if data, err := json.MarshalIndent(idb, "", "  "); err == nil {
		if err := os.WriteFile(rotation.MachineIDBackupPath, data, 0o644); err != nil {
			logger.Warn("Failed to write ID backup",
				zap.String("path", rotation.MachineIDBackupPath),
				zap.Error(err))
		}
	}

	store[machineIDKey] = rotation.NewMachineID
	store[deviceIDKey] = rotation.NewDeviceID

	out, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode storage file: %w", err)
	}
	if err := os.WriteFile(storagePath, out, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write storage file %s: %w", storagePath, err)
	}

	logger.Info("Rotated telemetry identifiers",
		zap.String("editor", editorKey),
		zap.String("storage", storagePath))
	return rotation, nil
}

func stringValue(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
