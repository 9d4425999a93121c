// Package config manages user-level settings stored at ~/.ros2types/config.yaml.
// Values come from the config file, from ROS2TYPES_* environment variables,
// and for the ament prefix path from AMENT_PREFIX_PATH as set by a sourced
// ROS installation.
package config
