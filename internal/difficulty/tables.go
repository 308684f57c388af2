package difficulty

// TopLevelFields is every key the game reads from the top level of a
// Custom Difficulty file. Anything else is a mistake.
var TopLevelFields = []string{
	"Name",
	"Description",
	"MaxActiveCritters",
	"MaxActiveSwarmers",
	"MaxActiveEnemies",
	"ResupplyCost",
	"StartingNitra",
	"ExtraLargeEnemyDamageResistance",
	"ExtraLargeEnemyDamageResistanceB",
	"ExtraLargeEnemyDamageResistanceC",
	"ExtraLargeEnemyDamageResistanceD",
	"EnemyDamageResistance",
	"SmallEnemyDamageResistance",
	"EnemyDamageModifier",
	"EnemyCountModifier",
	"EncounterDifficulty",
	"StationaryDifficulty",
	"EnemyWaveInterval",
	"EnemyNormalWaveInterval",
	"EnemyNormalWaveDifficulty",
	"EnemyDiversity",
	"StationaryEnemyDiversity",
	"VeteranNormal",
	"VeteranLarge",
	"DisruptiveEnemyPoolCount",
	"MinPoolSize",
	"MaxActiveElites",
	"EnvironmentalDamageModifier",
	"PointExtractionScalar",
	"HazardBonus",
	"FriendlyFireModifier",
	"WaveStartDelayScale",
	"SpeedModifier",
	"AttackCooldownModifier",
	"ProjectileSpeedModifier",
	"HealthRegenerationMax",
	"ReviveHealthRatio",
	"EliteCooldown",
	"EnemyDescriptors",
	"EnemyPool",
	"CommonEnemies",
	"DisruptiveEnemies",
	"SpecialEnemies",
	"StationaryEnemies",
	"SeasonalEvents",
	"EscortMule",
}

// DescriptorFields is every key the game reads from an EnemyDescriptor
// definition.
var DescriptorFields = []string{
	"Base",
	"SpawnSpread",
	"IdealSpawnSize",
	"CanBeUsedForConstantPressure",
	"CanBeUsedInEncounters",
	"DifficultyRating",
	"MinSpawnCount",
	"MaxSpawnCount",
	"Rarity",
	"SpawnAmountModifier",
	"Elite",
	"Scale",
	"TimeDilation",
	"PawnStats",
}

// PoolFields is every key the game reads from an enemy pool edit. These
// are lowercase in the game's own files, unlike everything else.
var PoolFields = []string{
	"clear",
	"add",
	"remove",
}

// RangeFields is every key the game reads from a range object.
var RangeFields = []string{
	"min",
	"max",
}

// WeightedRangeFields is every key the game reads from a weighted bin.
var WeightedRangeFields = []string{
	"weight",
	"range",
}

// EscortMuleFields is every key the game reads from the EscortMule object.
var EscortMuleFields = []string{
	"FriendlyFireModifier",
	"NeutralDamageModifier",
	"BigHitDamageModifier",
	"BigHitDamageReductionThreshold",
}

// PawnStatNames is every stat key the game reads from a PawnStats object.
//
// PST_ShieldRegeneratoinRate, PST_Ziplline_DownBoost and PST_ZipllineSpee
// are spelled exactly as they are in the game's own data, typos included.
// Correcting them here would make the linter reject working files.
var PawnStatNames = []string{
	"PST_BarrelKicking",
	"PST_CarriableThrowing",
	"PST_CarryingCapacity",
	"PST_CarryingSpeedModifier",
	"PST_CaveLeechSense",
	"PST_ColdResistance",
	"PST_CorrosiveResistance",
	"PST_DamageBonus",
	"PST_DamageFromPlayers",
	"PST_DamageResistance",
	"PST_DepositSpeed",
	"PST_DirtMiningStrength",
	"PST_ElectricResistance",
	"PST_EventExplosionResistance",
	"PST_ExplodeOnDeath",
	"PST_ExplosionResistance",
	"PST_FallingResistance",
	"PST_FireResistance",
	"PST_FlareThrowStrength",
	"PST_FriendlyFire",
	"PST_GoldMining",
	"PST_HoverBootsDuration",
	"PST_InternalDamageResistance",
	"PST_KineticResistance",
	"PST_MaxHealth",
	"PST_MaxShield",
	"PST_MeleeDamage",
	"PST_MorkiteMining",
	"PST_MovementSpeed",
	"PST_MovementSpeedEnvironmentalPenalty",
	"PST_MovementSpeedEnvironmentalPenaltyReduction",
	"PST_MovementSpeedPenalty",
	"PST_MovementSpeedPenaltyReduction",
	"PST_PhysicalResistance",
	"PST_PoisonResistance",
	"PST_PowerAttackCooldownRate",
	"PST_RadiationResistance",
	"PST_RedSugarHeal",
	"PST_ResourceMiningStrength",
	"PST_ResupplyHealing",
	"PST_ResupplySpeed",
	"PST_ReviveSpeed",
	"PST_RockMiningStrength",
	"PST_ShieldRegeneratoinRate",
	"PST_SlipperyFloor",
	"PST_SprintSpeed",
	"PST_Ziplline_DownBoost",
	"PST_ZipllineSpee",
}

// VanillaDescriptors is the set of EnemyDescriptor names that ship with
// the game and can always be referenced without being defined in the file.
var VanillaDescriptors = []string{
	"ED_Spider_Grunt",
	"ED_Spider_Grunt_Attacker",
	"ED_Spider_Grunt_Defender",
	"ED_Spider_Swarmer",
	"ED_Spider_Swarmer_Pheromone",
	"ED_Spider_Stinger",
	"ED_Spider_Spitter",
	"ED_Spider_Spitter_Fast",
	"ED_Spider_Shooter",
	"ED_Spider_RapidShooter",
	"ED_Spider_Exploder",
	"ED_Spider_ExploderTank",
	"ED_Spider_ExploderTank_King",
	"ED_Spider_Tank",
	"ED_Spider_Tank_Boss",
	"ED_Spider_Tank_Mutated",
	"ED_Spider_ShieldTank",
	"ED_Spider_Stalker",
	"ED_Spider_Buffer",
	"ED_Spider_Lobber",
	"ED_SpiderSpawner",
	"ED_Mactera_Shooter_Normal",
	"ED_Mactera_Shooter_Veteran",
	"ED_Mactera_Grabber",
	"ED_Mactera_Bomber",
	"ED_Mactera_TripleBomber",
	"ED_Mactera_Crystal",
	"ED_Shark",
	"ED_FlyingSmartRock",
	"ED_CaveLeech",
	"ED_ShootingPlant",
	"ED_TentaclePlant",
	"ED_JellyBreeder",
	"ED_Jelly_Swarmer",
	"ED_Woodlouse",
	"ED_Woodlouse_Youngling",
	"ED_InfectedMule",
	"ED_PatrolBot",
	"ED_Prospector",
	"ED_Bomber_Explosive",
	"ED_Bomber_Ice",
	"ED_Crawler",
	"ED_Crawler_Swarm",
	"ED_TunnelSwarmer",
}
